package fixture

import (
	_ "embed"
	"fmt"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	jsoniter "github.com/json-iterator/go"
)

//go:embed sample_requests.json
var sampleRequests []byte

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SampleRequests decodes the bundled demo data set: four requests covering every request status,
// span type and log level.
func SampleRequests() ([]traceModel.Request, error) {
	var requests []traceModel.Request
	if err := json.Unmarshal(sampleRequests, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode sample requests: %w", err)
	}
	return requests, nil
}
