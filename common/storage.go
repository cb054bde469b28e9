package common

import "github.com/nspcc-dev/neo-go/pkg/interop/storage"

// GetInt returns integer stored by the key or 0 if there is nothing.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// GetString returns string stored by the key or empty string if there is
// nothing.
func GetString(ctx storage.Context, key any) string {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(string)
	}

	return ""
}
