// Package companies combines the pottery collection, the company records and
// the successor graph into the Companies aggregate.
//
// The aggregate answers the questions the site asks: which companies exist,
// how many items each made, which companies are top level (have no
// successor), and how many items trace back to a lineage once everything it
// absorbed is counted (DescendantRollup).
//
// Any query naming a company outside AllCompanies fails with
// *lineage.UnknownCompanyError.
package companies
