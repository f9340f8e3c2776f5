// Package provider adapts the Anthropic Messages API to the runner's Model contract.
package provider
