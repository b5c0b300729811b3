// Package http exposes the fleet analytics API over chi. Upload a workbook
// with POST /api/workbooks, then request analyses by workbook ID; every
// analysis endpoint answers JSON by default and CSV with ?format=csv.
package http
