package handler

type turnoRequest struct {
	DiaSemana  int    `json:"dia_semana"  validate:"gte=0,lte=6"`
	HoraInicio string `json:"hora_inicio" validate:"required"`
	HoraFin    string `json:"hora_fin"    validate:"required"`
	NivelID    string `json:"nivel_id"    validate:"required"`
	ProfesorID string `json:"profesor_id" validate:"required"`
	PiletaID   string `json:"pileta_id"   validate:"required"`
	CupoMaximo int    `json:"cupo_maximo" validate:"gt=0"`
	Activo     bool   `json:"activo"`
}

type patchTurnoRequest struct {
	Activo     *bool `json:"activo"`
	CupoMaximo *int  `json:"cupo_maximo" validate:"omitempty,gt=0"`
}

type generarClasesRequest struct {
	Desde string `json:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `json:"hasta" validate:"required,datetime=2006-01-02"`
}

type generarClasesResponse struct {
	Creadas int `json:"creadas"`
}
