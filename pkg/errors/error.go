package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// ErrInvalidOrder represents an order rejected for a non-positive quantity or price.
	ErrInvalidOrder ErrorCode = "invalid_order"
	// ErrCapacityExceeded represents a submission rejected because the ticker directory is full.
	ErrCapacityExceeded ErrorCode = "capacity_exceeded"

	// KafkaReadError represents an error while reading order submissions from Kafka.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaPublishError represents an error while publishing trade events to Kafka.
	KafkaPublishError ErrorCode = "kafka_publish_error"
)
