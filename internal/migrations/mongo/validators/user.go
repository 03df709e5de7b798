package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "first_name"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"email":      bson.M{"bsonType": "string", "minLength": 3},
			"first_name": bson.M{"bsonType": "string", "maxLength": 100},
			"last_name":  bson.M{"bsonType": "string", "maxLength": 100},
			"admin":      bson.M{"bsonType": "bool"},
			"mentor":     bson.M{"bsonType": "bool"},
			"grade":      bson.M{"bsonType": []string{"long", "int"}},
			"year":       bson.M{"bsonType": []string{"long", "int"}},
		},
	},
}
