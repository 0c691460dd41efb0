package coalescent

// ModelKind selects one of the five common-ancestor rules §4.2
// describes: Hudson, SMC, SMC', Beta, Dirac.
type ModelKind int

const (
	// ModelHudson is the baseline: a uniformly chosen pair is always
	// accepted.
	ModelHudson ModelKind = iota
	// ModelSMC rejects a coalescing pair whose segment chains share no
	// overlapping genetic interval.
	ModelSMC
	// ModelSMCPrime weakens ModelSMC's adjacency requirement: chains
	// that are merely adjacent (one chain's tail touches the other's
	// head) are also accepted, per McVean & Cardin (2005).
	ModelSMCPrime
	// ModelBeta is the Beta(alpha, truncation) multiple-merger
	// coalescent.
	ModelBeta
	// ModelDirac is the Dirac(psi, c) multiple-merger coalescent.
	ModelDirac
)

func (m ModelKind) String() string {
	switch m {
	case ModelHudson:
		return "hudson"
	case ModelSMC:
		return "smc"
	case ModelSMCPrime:
		return "smc_prime"
	case ModelBeta:
		return "beta"
	case ModelDirac:
		return "dirac"
	default:
		return "unknown"
	}
}

// Model bundles a ModelKind with its parameters. Beta/Dirac parameters
// are ignored by the other models.
type Model struct {
	Kind ModelKind

	// BetaAlpha, BetaTruncation parameterize ModelBeta: the merger
	// fraction is drawn from Beta(2-alpha, alpha), and a proposed merger
	// of k of the population's n lineages is rejected when
	// k < BetaTruncation*n.
	BetaAlpha      float64
	BetaTruncation float64

	// DiracPsi, DiracC parameterize ModelDirac: Psi is the
	// fraction of the population replaced in a multiple-merger event,
	// C scales how often such events occur relative to Kingman pairs.
	DiracPsi float64
	DiracC   float64
}
