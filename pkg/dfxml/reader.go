package dfxml

import (
	"encoding/xml"
	"io"
)

// ReadVolumes parses and returns all <volume> elements from the reader.
func ReadVolumes(r io.Reader) ([]VolumeObject, error) {
	dec := xml.NewDecoder(r)
	var volumes []VolumeObject

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		// Look for start elements named "volume"
		if startElem, ok := tok.(xml.StartElement); ok && startElem.Name.Local == "volume" {
			var vol VolumeObject
			if err := dec.DecodeElement(&vol, &startElem); err != nil {
				return nil, err
			}
			volumes = append(volumes, vol)
		}
	}
	return volumes, nil
}
