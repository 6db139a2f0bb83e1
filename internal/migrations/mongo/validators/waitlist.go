package validators

import "go.mongodb.org/mongo-driver/bson"

var WaitlistValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"customer_id",
			"slot_id",
			"requested_date",
			"status",
			"position",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^WL[0-9A-F]{8}$",
			},
			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},
			"slot_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},
			"requested_date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},
			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"WAITING", "ALLOCATED"},
			},
			"position": bson.M{
				"bsonType": "long",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
			"allocated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
