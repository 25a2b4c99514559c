// Package request contains the shipment request aggregate and its status
// state machine. A request is created from a client submission, priced from
// the active tariff, and driven by agency staff through the workflow from
// pending to delivered (or rejected).
package request
