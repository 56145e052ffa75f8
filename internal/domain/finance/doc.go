// Package finance holds the bank, bank transaction and invoice entities.
package finance
