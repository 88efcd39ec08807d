package models

type ParcelStatus string

const (
	ParcelStatusPending  ParcelStatus = "pending"
	ParcelStatusOnTheWay ParcelStatus = "On The Way"
	ParcelStatusCanceled ParcelStatus = "canceled"
)

// Stored parcel field names. Weight keeps its capital W from the existing
// collection schema.
const (
	ParcelFieldEmail         = "email"
	ParcelFieldType          = "parcelType"
	ParcelFieldWeight        = "Weight"
	ParcelFieldReceiverName  = "receiverName"
	ParcelFieldReceiverNo    = "receiverNo"
	ParcelFieldAddress       = "address"
	ParcelFieldLatitude      = "latitude"
	ParcelFieldLongitude     = "longitude"
	ParcelFieldPrice         = "price"
	ParcelFieldStatus        = "status"
	ParcelFieldDeliveryManID = "deliveryManId"
	ParcelFieldProofImageURL = "proofImageUrl"
)

// ParcelEditableFields is the fixed schema of the structured parcel update.
var ParcelEditableFields = []string{
	ParcelFieldType,
	ParcelFieldWeight,
	ParcelFieldReceiverName,
	ParcelFieldReceiverNo,
	ParcelFieldAddress,
	ParcelFieldLatitude,
	ParcelFieldLongitude,
	ParcelFieldPrice,
	ParcelFieldStatus,
}

// IsLocked reports whether a parcel with this persisted status refuses
// structured updates.
func (s ParcelStatus) IsLocked() bool {
	return s == ParcelStatusOnTheWay
}
