// Package prompt collects values for a configuration tree interactively.
//
// Collect walks the tree depth-first and asks one question per named field
// through a Driver. SurveyDriver talks to a terminal with survey/v2; tests
// and other front ends supply their own Driver. The collected map has the
// same shape the printer binds through the root "values" key.
package prompt
