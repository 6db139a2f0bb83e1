package validators

import "go.mongodb.org/mongo-driver/bson"

var GymCenterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "owner_id", "name", "address", "city", "city_key", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":      bson.M{"bsonType": "string", "pattern": "^GYM[0-9A-F]{8}$"},
			"owner_id": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 64},
			"name":     bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"address":  bson.M{"bsonType": "string", "minLength": 2, "maxLength": 200},
			"city":     bson.M{"bsonType": "string", "minLength": 2, "maxLength": 50},
			"city_key": bson.M{"bsonType": "string", "minLength": 1},
			"phone":    bson.M{"bsonType": "string", "pattern": `^\+[1-9]\d{1,14}$`},
			"email":    bson.M{"bsonType": "string"},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var SlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "gym_id", "start_time", "end_time", "total_seats", "active", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string", "pattern": "^SLT[0-9A-F]{8}$"},
			"gym_id":     bson.M{"bsonType": "string", "minLength": 1},
			"start_time": bson.M{"bsonType": "string", "pattern": timeOfDayPattern},
			"end_time":   bson.M{"bsonType": "string", "pattern": timeOfDayPattern},
			"total_seats": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  500,
			},
			"price":      bson.M{"bsonType": "decimal", "minimum": 0},
			"active":     bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
