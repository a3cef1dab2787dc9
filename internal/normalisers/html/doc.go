// Package html provides a Normaliser implementation for saved job postings
// and HTML CVs. Pages are parsed with goquery, boilerplate elements are
// removed and the body is converted to Markdown so headings and lists
// survive chunking.
package html
