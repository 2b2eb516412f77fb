package dapsession

// Capabilities is the fixed capability object advertised on initialize,
// per spec §4.5.1. Fields left false are the ones the session explicitly
// does not advertise: step-back, set-variable, restart-frame, goto-targets,
// completions, modules.
type Capabilities struct {
	SupportsConfigurationDoneRequest bool `json:"supportsConfigurationDoneRequest"`
	SupportsFunctionBreakpoints      bool `json:"supportsFunctionBreakpoints"`
	SupportsConditionalBreakpoints   bool `json:"supportsConditionalBreakpoints"`
	SupportsExceptionOptions         bool `json:"supportsExceptionOptions"`
	SupportsHitConditionalBreakpoints bool `json:"supportsHitConditionalBreakpoints"`
	SupportsLogPoints                bool `json:"supportsLogPoints"`
	SupportsEvaluateForHovers        bool `json:"supportsEvaluateForHovers"`
	SupportsDelayedStackTraceLoading bool `json:"supportsDelayedStackTraceLoading"`
	SupportsDataBreakpoints          bool `json:"supportsDataBreakpoints"`
	SupportsSingleThreadExecutionRequests bool `json:"supportsSingleThreadExecutionRequests"`
	SupportTerminateDebuggee         bool `json:"supportTerminateDebuggee"`

	SupportsStepBack       bool `json:"supportsStepBack"`
	SupportsSetVariable    bool `json:"supportsSetVariable"`
	SupportsRestartFrame   bool `json:"supportsRestartFrame"`
	SupportsGotoTargetsRequest bool `json:"supportsGotoTargetsRequest"`
	SupportsCompletionsRequest bool `json:"supportsCompletionsRequest"`
	SupportsModulesRequest bool `json:"supportsModulesRequest"`
}

// defaultCapabilities returns the capability object advertised by every
// session, independent of the loaded interpreter version.
func defaultCapabilities() Capabilities {
	return Capabilities{
		SupportsConfigurationDoneRequest:      true,
		SupportsFunctionBreakpoints:           true,
		SupportsConditionalBreakpoints:        true,
		SupportsExceptionOptions:              true,
		SupportsHitConditionalBreakpoints:     true,
		SupportsLogPoints:                     true,
		SupportsEvaluateForHovers:             true,
		SupportsDelayedStackTraceLoading:      true,
		SupportsDataBreakpoints:               true,
		SupportsSingleThreadExecutionRequests: true,
		SupportTerminateDebuggee:              true,
	}
}
