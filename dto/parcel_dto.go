package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/princinho/parcelly/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var validate = validator.New()

// parcelNumericRules bounds the structured update fields when the caller
// sends them as numbers. Any other value type is stored as sent.
var parcelNumericRules = map[string]string{
	models.ParcelFieldWeight:    "gte=0",
	models.ParcelFieldLatitude:  "gte=-90,lte=90",
	models.ParcelFieldLongitude: "gte=-180,lte=180",
	models.ParcelFieldPrice:     "gte=0",
}

// ValidateParcelUpdate checks the numeric bounds of an allow-listed parcel
// update.
func ValidateParcelUpdate(fields bson.M) error {
	for _, field := range models.ParcelEditableFields {
		rule, ok := parcelNumericRules[field]
		if !ok {
			continue
		}
		n, ok := fields[field].(float64)
		if !ok {
			continue
		}
		if err := validate.Var(n, rule); err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
	}
	return nil
}
