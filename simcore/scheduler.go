package simcore

// PriorityScheme classifies how a scheduler's job priorities vary over
// time: fixed for the task's lifetime, fixed for a job's lifetime but
// varying job-to-job, or free to change mid-job.
type PriorityScheme int

const (
	Static PriorityScheme = iota
	JobLevelDynamic
	UnrestrictedDynamic
)

// MigrationDegree classifies how freely a scheduler may move a job between
// cores.
type MigrationDegree int

const (
	Partitioned MigrationDegree = iota
	Restricted
	Full
)

// Scheduler is implemented by every scheduling policy in the scheduler
// package. It is declared here, in simcore, rather than in scheduler
// itself: SimModel holds a Scheduler field, and scheduler's concrete
// policies need simcore's Task/SimModel/ScheduleDecision types in their
// method signatures, so declaring the interface at the consumer avoids an
// import cycle between the two packages — the conventional Go fix, not a
// deviation in spirit from "one interface, one package of implementations".
type Scheduler interface {
	// Kind reports this scheduler's classification, used by the experiment
	// harness to pick analytic skip-thresholds and by tests asserting
	// scheduler metadata.
	Kind() (PriorityScheme, MigrationDegree)

	// Init is called once before simulation begins, letting a scheduler
	// precompute anything that depends on the full task set (e.g. PD²'s
	// group deadlines, UEDF's initial budgets).
	Init(taskSet []Task, cores int)

	// Schedule is invoked once per simulation step with the full current
	// model state and must return a decision covering every core.
	Schedule(model *SimModel) ScheduleDecision
}
