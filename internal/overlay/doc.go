// package overlay manages translated views of a lyrics document.
//
// Manager owns the mutually exclusive full-document and line-overlay
// translation states. Every trigger (language change, document swap, mode
// toggle) bumps a generation counter; a response only lands if it carries
// the current generation and mode, so late responses from superseded
// requests can never clobber newer state. Selecting the native language
// (the empty code) clears everything locally without a network round trip.
//
// Words covers on-demand single-word translation popups: results are
// memoized per rendered word instance, a failed fetch degrades to the
// original word, and popup placement is clamped to the container.
package overlay
