// Package wizard implements the multi-step registration wizard: a generic
// state machine parameterised by an entity schema. A Wizard owns a State value
// and replaces it on every transition (UpdateField, SetPhoto, Next, Back,
// Submit, Cancel). Validation failures never surface as Go errors; they are
// recorded in State.Errors and the transition is refused. Go errors are
// reserved for calls the current step does not allow.
//
// A Wizard is not safe for concurrent use. Hosts drive it from a single event
// loop; the asynchronous photo capture is modelled as a request returning a
// one-shot channel whose result the host hands back through CompletePhoto.
package wizard
