package config

import "os"

func setMissing(values map[string]string) error {
	for k, v := range values {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}
