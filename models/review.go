package models

// ReviewFieldDeliveryManID holds the reviewed delivery man's user id in hex.
const ReviewFieldDeliveryManID = "deliveryManId"
