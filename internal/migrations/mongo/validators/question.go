package validators

import "go.mongodb.org/mongo-driver/bson"

var QuestionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"state", "field", "text", "type"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":   bson.M{"bsonType": "objectId"},
			"order": bson.M{"bsonType": []string{"long", "int"}},
			"state": bson.M{
				"enum": []string{"PROFILE", "INQUIRY", "ADDITIONAL_QUESTION", "SUBMITTED"},
			},
			"field": bson.M{"bsonType": "string", "minLength": 1},
			"text":  bson.M{"bsonType": "string", "minLength": 1},
			"type": bson.M{
				"enum": []string{"number", "string", "textarea", "datetime", "dropdown", "file"},
			},
			"validation": bson.M{"bsonType": "object"},
			"options": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
		},
	},
}
