/*
Package ports defines the driven ports (interfaces) of the compatibility analyzer.

These interfaces decouple the engine and its front ends from storage, allowing
descriptions and results to live on disk, in memory, in Redis or in Badger.

# Key Interfaces

  - GraphSource: Returns raw graph descriptions by reference (e.g., a file path or a key).
  - ResultStore: Persists and loads finished compatibility runs.
*/
package ports
