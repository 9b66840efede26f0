// Package validation implements the per-step rules of the registration
// wizard. Validate is a pure function: it reads a schema step, the collected
// values, and the photo decision, and returns a fresh error map. Merging or
// clearing errors between passes is the wizard's job.
package validation
