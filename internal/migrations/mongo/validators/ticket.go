package validators

import "go.mongodb.org/mongo-driver/bson"

var TicketValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"topic", "description", "requestor_id"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":          bson.M{"bsonType": "objectId"},
			"topic":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": 120},
			"description":  bson.M{"bsonType": "string", "minLength": 1, "maxLength": 2000},
			"location":     bson.M{"bsonType": "string", "maxLength": 200},
			"requestor_id": bson.M{"bsonType": "string", "minLength": 1},
			"tags": bson.M{
				"bsonType": "array",
				"maxItems": 10,
				"items":    bson.M{"bsonType": "string", "maxLength": 40},
			},
			"taken":    bson.M{"bsonType": "bool"},
			"resolved": bson.M{"bsonType": "bool"},
		},
	},
}
