package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newID returns an application-generated document ID. IDs are generated here
// rather than by the server so created entities can be returned without a
// second round trip.
func newID() string {
	return primitive.NewObjectID().Hex()
}
