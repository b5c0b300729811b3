// Package workbook loads fleet spreadsheets into typed sheet rows and
// memoizes parsed workbooks by the content hash of the uploaded bytes, so
// repeated analysis requests against the same file never re-parse it.
package workbook
