// Package metrics exposes prometheus collectors for the watcher components.
package metrics

const namespace = "blockinsight7000_watcher"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
