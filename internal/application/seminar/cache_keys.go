package seminar

import "fmt"

func cacheKeyStats(eventID string) string {
	return fmt.Sprintf("seminar:stats:%s", eventID)
}

func cacheKeyEventDetails(eventID string) string {
	return fmt.Sprintf("seminar:event:%s", eventID)
}
