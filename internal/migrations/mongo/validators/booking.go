package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"person_name",
			"email",
			"contact_no",
			"event_date",
			"venue",
			"partition",
			"no_of_guests",
			"confirmed",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"person_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"person_cnic": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^.+@.+$`,
			},

			"contact_no": bson.M{
				"bsonType":  "string",
				"minLength": 5,
				"maxLength": 20,
			},

			"event_date": bson.M{
				"bsonType": "date",
			},

			"booking_date": bson.M{
				"bsonType": "date",
			},

			"venue": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"partition": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"no_of_guests": bson.M{
				"bsonType": "string",
			},

			"packages": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"booking_rent": bson.M{
				"bsonType": "string",
			},

			"booking_discount": bson.M{
				"bsonType": "string",
			},

			"booking_total": bson.M{
				"bsonType": "string",
			},

			"confirmed": bson.M{
				"bsonType": "int",
				"enum":     []int{0, 1},
			},

			"status": bson.M{
				"bsonType": "bool",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
