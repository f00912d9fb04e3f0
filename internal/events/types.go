// Package events publishes the engine's observable moments, debounced
// location changes, address resolutions, and fee quotes, to a pluggable
// destination: console, partitioned JSON or Parquet files, cloud storage,
// or Kafka.
package events

import (
	"fmt"

	"github.com/xitongsys/parquet-go/schema"
)

// Topics the engine publishes to.
const (
	TopicLocationChanged = "location_changed_events"
	TopicAddressResolved = "address_resolved_events"
	TopicFeeComputed     = "fee_computed_events"
)

// BaseEvent is the common structure for all events. Coordinates are
// flattened into plain doubles so every sink, Parquet included, handles
// them without nested schemas.
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID    string `json:"userId,omitempty" parquet:"name=userId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// LocationChangedEvent records a debounced significant location change.
type LocationChangedEvent struct {
	BaseEvent
	Lat  float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng  float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
	Mode string  `json:"mode" parquet:"name=mode,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// AddressResolvedEvent records the outcome of a reverse geocode, including
// degraded placeholder results.
type AddressResolvedEvent struct {
	BaseEvent
	Lat              float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng              float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
	FormattedAddress string  `json:"formattedAddress" parquet:"name=formattedAddress,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status           string  `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// FeeComputedEvent records a delivery fee quote and the factors behind it.
type FeeComputedEvent struct {
	BaseEvent
	OriginLat        float64 `json:"originLat" parquet:"name=originLat,type=DOUBLE"`
	OriginLng        float64 `json:"originLng" parquet:"name=originLng,type=DOUBLE"`
	DestinationLat   float64 `json:"destinationLat" parquet:"name=destinationLat,type=DOUBLE"`
	DestinationLng   float64 `json:"destinationLng" parquet:"name=destinationLng,type=DOUBLE"`
	DistanceKm       float64 `json:"distanceKm" parquet:"name=distanceKm,type=DOUBLE"`
	OrderClass       string  `json:"orderClass" parquet:"name=orderClass,type=BYTE_ARRAY,convertedtype=UTF8"`
	BaseFee          float64 `json:"baseFee" parquet:"name=baseFee,type=DOUBLE"`
	DistanceFee      float64 `json:"distanceFee" parquet:"name=distanceFee,type=DOUBLE"`
	TimeSurcharge    float64 `json:"timeSurcharge" parquet:"name=timeSurcharge,type=DOUBLE"`
	WeatherSurcharge float64 `json:"weatherSurcharge" parquet:"name=weatherSurcharge,type=DOUBLE"`
	Total            float64 `json:"total" parquet:"name=total,type=DOUBLE"`
	Currency         string  `json:"currency" parquet:"name=currency,type=BYTE_ARRAY,convertedtype=UTF8"`
	Source           string  `json:"source" parquet:"name=source,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// GetSchema returns the Parquet schema handler for a topic.
func GetSchema(topic string) (*schema.SchemaHandler, error) {
	switch topic {
	case TopicLocationChanged:
		return schema.NewSchemaHandlerFromStruct(new(LocationChangedEvent))
	case TopicAddressResolved:
		return schema.NewSchemaHandlerFromStruct(new(AddressResolvedEvent))
	case TopicFeeComputed:
		return schema.NewSchemaHandlerFromStruct(new(FeeComputedEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}
