package model

import "time"

// Compliance finding codes and severities. Findings are informational
// results, never errors: they are collected and returned, not thrown.
const (
	FindingPriorityPartialDependency = "PRIORITY_PARTIAL_DEPENDENCY"
	FindingMissingEvidence           = "MISSING_EVIDENCE"
	FindingBelowThreshold            = "BELOW_THRESHOLD"
	FindingUnverifiedCalculation     = "UNVERIFIED_CALCULATION"

	SeverityAdvisory     = "ADVISORY"
	SeverityNonCompliant = "NON_COMPLIANT"
)

// Overall case statuses aggregated from per-dependant findings.
const (
	CaseCompliant    = "COMPLIANT"
	CaseFindings     = "FINDINGS"
	CaseNonCompliant = "NON_COMPLIANT"
)

// ComplianceFinding flags one statutory concern on one dependant.
type ComplianceFinding struct {
	DependantID string `json:"dependantId"`
	Code        string `json:"code"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
}

// CaseStatus aggregates the findings across every dependant of one
// deceased person into an overall state.
type CaseStatus struct {
	DeceasedID    string              `json:"deceasedId"`
	OverallStatus string              `json:"overallStatus"`
	Findings      []ComplianceFinding `json:"findings"`
	CheckedAt     time.Time           `json:"checkedAt"`
}
