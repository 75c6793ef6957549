package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultFailure  = "executor_failure"
	resultRejected = "rejected"
)

var (
	proposalsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quorum",
		Name:      "proposals_submitted_total",
		Help:      "Number of proposals submitted.",
	})
	approvalsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quorum",
		Name:      "approvals_total",
		Help:      "Number of approvals recorded.",
	})
	executions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Name:      "executions_total",
		Help:      "Number of execution attempts by result.",
	}, []string{"result"})
)
