/*
Package mapping implements the webhook field-mapping and extraction engine.

Given a raw inbound JSON payload and a domain.WebhookMapping, it resolves
each configured field through dotted/indexed path expressions with ordered
fallback alternatives, applies value translations to custom variables, and
evaluates conditional routing to pick the target funnel.

Everything here is a pure, side-effect-free function of (payload, mapping):
absence of a value is the only failure signal, never an error that aborts
mapping of the remaining fields.
*/
package mapping
