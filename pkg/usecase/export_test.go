package usecase

// OutcomeOf is exported for testing
var OutcomeOf = outcomeOf
