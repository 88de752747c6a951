package api

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateTime is the DateTime scalar. Output is always UTC.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch input := input.(type) {
	case time.Time:
		t.Time = input.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, input)
		if err != nil {
			return fmt.Errorf("DateTime cannot represent %q: %w", input, err)
		}
		t.Time = parsed.UTC()
	case int:
		t.Time = time.Unix(int64(input), 0).UTC()
	case int32:
		t.Time = time.Unix(int64(input), 0).UTC()
	case int64:
		t.Time = time.Unix(input, 0).UTC()
	case float64:
		t.Time = time.Unix(int64(input), 0).UTC()
	default:
		return fmt.Errorf("wrong type for DateTime: %T", input)
	}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(dateTimeLayout))
}
