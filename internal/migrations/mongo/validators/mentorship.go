package validators

import "go.mongodb.org/mongo-driver/bson"

var MentorshipValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"mentor_id",
			"start_time",
			"end_time",
			"location",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"mentor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"start_time": bson.M{
				"bsonType": []string{"long", "int"},
				"minimum":  0,
			},

			"end_time": bson.M{
				"bsonType": []string{"long", "int"},
				"minimum":  0,
			},

			"location": bson.M{
				"enum": []string{"online", "offline"},
			},

			"offline_location": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"hacker_id": bson.M{
				"bsonType": "string",
			},

			"hacker_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"team_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"hacker_description": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"mentor_notes": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"mentor_mark_as_done": bson.M{
				"bsonType": "bool",
			},

			"mentor_mark_as_afk": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
