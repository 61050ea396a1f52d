// Package codec marshals component payloads to and from their persisted JSON form.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Decode unmarshals bz into a fresh T. The zero value of T is returned alongside the
// error when bz is not valid JSON for T.
func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	err := json.Unmarshal(bz, comp)
	if err != nil {
		return *comp, eris.Wrap(err, "")
	}
	return *comp, nil
}

// Encode marshals comp into its canonical JSON form.
func Encode(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
