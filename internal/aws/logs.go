package aws

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// FetchLogsInput selects a window of CloudWatch log events
type FetchLogsInput struct {
	LogGroup string
	Since    time.Duration // how far back to look, defaults to one hour
	Level    string        // optional substring filter (ERROR, WARN, INFO)
	Tail     int           // keep at most the last N events, defaults to 50
}

// FetchRecentEvents returns recent events of a log group, newest last.
// Level filtering and the tail cap are applied locally after fetching the
// whole window, so the tail reflects the filtered stream.
func (c *Client) FetchRecentEvents(input FetchLogsInput) ([]pkgtypes.LogEvent, error) {
	since := input.Since
	if since <= 0 {
		since = time.Hour
	}

	tail := input.Tail
	if tail <= 0 {
		tail = 50
	}

	startTime := time.Now().Add(-since).UnixMilli()
	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(c.Logs, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: &input.LogGroup,
		StartTime:    aws.Int64(startTime),
		Interleaved:  aws.Bool(true),
	})

	var events []pkgtypes.LogEvent
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, errors.API("FilterLogEvents", err)
		}

		for _, e := range page.Events {
			message := deref(e.Message)
			if input.Level != "" && !strings.Contains(strings.ToUpper(message), strings.ToUpper(input.Level)) {
				continue
			}

			event := pkgtypes.LogEvent{Message: message}
			if e.Timestamp != nil {
				event.Timestamp = time.UnixMilli(*e.Timestamp)
			}
			events = append(events, event)
		}
	}

	if len(events) > tail {
		events = events[len(events)-tail:]
	}

	return events, nil
}
