package appmessage

import "encoding/json"

// Key names a value in the dictionary sent to the watch.
type Key string

const (
	KeyTemperature Key = "KEY_TEMPERATURE"
	KeyConditions  Key = "KEY_CONDITIONS"
)

// ID is the AppMessage key the watch app binds the name to.
func (k Key) ID() (uint32, bool) {
	switch k {
	case KeyTemperature:
		return 0, true
	case KeyConditions:
		return 1, true
	}
	return 0, false
}

// Payload always carries both keys; there is no way to build a partial one.
type Payload struct {
	Temperature int
	Conditions  string
}

func (p Payload) Dictionary() map[Key]interface{} {
	return map[Key]interface{}{
		KeyTemperature: p.Temperature,
		KeyConditions:  p.Conditions,
	}
}

func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Temperature int    `json:"KEY_TEMPERATURE"`
		Conditions  string `json:"KEY_CONDITIONS"`
	}{p.Temperature, p.Conditions})
}
