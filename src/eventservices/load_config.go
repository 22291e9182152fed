package eventservices

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

func LoadAnalyticsConfig(path string) (*eventmodels.AnalyticsConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadAnalyticsConfig: failed to read %s: %w", path, err)
	}

	var config eventmodels.AnalyticsConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("LoadAnalyticsConfig: failed to parse yaml: %w", err)
	}

	return &config, nil
}
