// Package atlas packs named images of differing sizes into the layers of a
// square array texture.
//
// Tiles are grouped by slot class: every layer hosts slots of a single
// power-of-two size, and slots within a layer are addressed by an
// axis-biased Morton index so the occupied region grows corner-outward.
// Adding and removing tiles is pure bookkeeping. Pixel data only reaches the
// GPU when UpdateTexture or Freeze is called, through the Texture interface.
//
// An Atlas is not safe for concurrent use. Callers must serialize mutation;
// read-only queries may run concurrently only while nothing mutates.
package atlas
