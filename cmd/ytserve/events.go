package main

import (
	"fmt"
	"strings"

	"github.com/famomatic/ytserve/client"
)

func formatExtractionEvent(evt client.ExtractionEvent) string {
	return formatEvent("extract", evt.Stage, evt.Phase,
		"url", evt.URL,
		"detail", evt.Detail,
	)
}

func formatDownloadEvent(evt client.DownloadEvent) string {
	return formatEvent("download", evt.Stage, evt.Phase,
		"url", evt.URL,
		"selector", evt.Selector,
		"path", evt.Path,
		"detail", evt.Detail,
	)
}

// formatEvent renders "[kind] stage:phase key=value ..." skipping empty values.
func formatEvent(kind, stage, phase string, kv ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s:%s", kind, stage, phase)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		fmt.Fprintf(&b, " %s=%s", kv[i], kv[i+1])
	}
	return b.String()
}
