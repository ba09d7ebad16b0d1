package persistence

import "go.mongodb.org/mongo-driver/v2/bson"

// newMovieID returns a fresh 24-hex ObjectID string. Every backend uses the
// same id shape so clients cannot tell which store is behind the API.
func newMovieID() string {
	return bson.NewObjectID().Hex()
}

// parseMovieID reports whether id is a well-formed ObjectID.
func parseMovieID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}
