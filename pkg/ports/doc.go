/*
Package ports defines the driven ports (interfaces) for the zapflow core.

These interfaces decouple the funnel/mapping engine from external
collaborators, allowing the core to work with various storage backends,
blob stores and delivery systems.

# Key Interfaces

  - FunnelStore: Persists and loads FunnelDefinition documents.
  - MappingStore: Persists and loads WebhookMapping documents.
  - BlobStore: Opaque "store blob, return URL" collaborator for media.
  - TemplateCatalog: Lists approved provider templates for a client.
  - Forwarder: Hands extraction results to the routing/delivery collaborator.
*/
package ports
