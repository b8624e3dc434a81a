package metrics

import (
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Klimanso/json-reporter/types"
)

const (
	MetricsNamespace = "jsonreporter"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	resultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "results_total",
		Help:      "Count of recorded test results",
	}, []string{
		"run_id",
		"status",
	})

	streamLinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "stream_lines_total",
		Help:      "Count of processed event stream lines",
	}, []string{
		"run_id",
		"action",
	})

	persistFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "persist_failures_total",
		Help:      "Count of report writes that failed",
	}, []string{
		"error",
	})

	reportTests = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "report_tests",
		Help:      "Number of test identities in the persisted report",
	}, []string{
		"run_id",
	})

	reportDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "report_duration_seconds",
		Help:      "Wall clock duration of the reporter run",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	RecordError(label + "." + errToLabel(err))
}

// RecordResult counts one recorded test result by terminal status
func RecordResult(runID string, status types.TestStatus) {
	if !status.IsValid() {
		log.Error("RecordResult - invalid status", "status", status)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "results_total",
			"run_id", runID,
			"status", status)
	}
	resultsTotal.WithLabelValues(runID, string(status)).Inc()
}

// RecordStreamLine counts one processed line of the replayed event stream
func RecordStreamLine(runID string, action string) {
	streamLinesTotal.WithLabelValues(runID, action).Inc()
}

// RecordPersistFailure counts a swallowed report write failure
func RecordPersistFailure(err error) {
	persistFailuresTotal.WithLabelValues(errToLabel(err)).Inc()
}

// RecordRun records the final shape of a reporter run
func RecordRun(runID string, tests int, duration time.Duration) {
	reportTests.WithLabelValues(runID).Set(float64(tests))
	reportDuration.WithLabelValues(runID).Set(duration.Seconds())
}
