// Package report renders batch results as aligned text tables or JSON.
package report
