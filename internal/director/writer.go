package director

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WriteShotList writes a shot list to a YAML file
func WriteShotList(list *ShotList, path string) error {
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadShotList reads a shot list from a YAML file
func ReadShotList(path string) (*ShotList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list ShotList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	return &list, nil
}
