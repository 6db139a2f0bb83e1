package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "user_id", "title", "message", "type", "read", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":     bson.M{"bsonType": "string", "minLength": 1},
			"user_id": bson.M{"bsonType": "string", "minLength": 1},
			"title":   bson.M{"bsonType": "string"},
			"message": bson.M{"bsonType": "string"},
			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"BOOKING", "CANCELLATION", "PROMOTION", "GENERAL"},
			},
			"event":      bson.M{"bsonType": "string"},
			"read":       bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var SlotLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "expires_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
