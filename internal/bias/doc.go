// Package bias flags potentially biased columns of a tabular dataset.
//
// A column is cleaned of missing values and classified: text columns and
// numeric columns with fewer than ten distinct values are categorical, the
// rest numeric. Categorical columns are judged by the share of the most
// frequent value and by the base-2 entropy of the distribution relative to its
// maximum. Numeric columns are split into five equal-width bins and judged by
// the share of the fullest bin and by the adjusted Fisher-Pearson skewness.
//
// Analysis is a pure function of its input: the same column always produces
// the same Result, and columns can be analyzed concurrently.
package bias
