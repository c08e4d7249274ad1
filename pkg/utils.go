package pkg

import "fmt"

// GroupByKey indexes entities by the string value stored under key.
func GroupByKey(entities []map[string]interface{}, key string) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(entities))
	for _, entity := range entities {
		keyVal, ok := entity[key]
		if !ok {
			return nil, fmt.Errorf("failed to find %s key", key)
		}
		name, ok := keyVal.(string)
		if !ok {
			return nil, fmt.Errorf("%s key is %T, not a string", key, keyVal)
		}
		result[name] = entity
	}
	return result, nil
}
