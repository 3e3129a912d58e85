/*
Package domain contains the core domain models for the zapflow engine.

It defines the fundamental entities of the funnel builder and the webhook
mapping engine: funnels, flow graphs (nodes, edges, handles), webhook field
mappings and their extraction results. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - FunnelDefinition: A named flow graph plus trigger/restriction metadata.
  - FlowGraph / Node / Edge: The directed graph of typed steps that makes up
    a funnel. Node configuration is a tagged union keyed by NodeKind.
  - WebhookMapping: Declares how contact fields are extracted from an
    arbitrary inbound JSON payload (path specs with fallback, translations,
    conditional routing).
  - ExtractionResult: The outcome of running a mapping against a payload.
*/
package domain
