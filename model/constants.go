package model

const (
	// PenaltyValue is the objective assigned to an evaluation that could not
	// be scored.
	PenaltyValue = 1e6

	// objective weights and normalizers
	weightRMSE     = .2
	weightResidual = .8
	maxRMSE        = 1.
	maxResidual    = 100.

	radiusThreshold = .2 // [m]
	maxIterations   = 4  // simplex
	cmaesIterations = 25 // generations
	boundFactor     = 100.
	simplexSize     = .05
	cmaesStepSize   = .25 // unit hypercube

	nearzero = 1e-9
)

// calibration methods
const (
	NelderMead = "nelder-mead"
	CMAES      = "cma-es"
)
