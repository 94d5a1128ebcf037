// Package eo implements the electro-optical extension of catalog items.
//
// An Item is derived from a generic stac.Item by reading the eo:-namespaced
// properties (eo:gsd, eo:platform, eo:instrument, eo:bands and the optional
// scene geometry fields). Assets whose properties carry eo:bands are upgraded
// to eo.Asset while the item is derived, or when they are added later, and
// each keeps a non-owning reference back to the item holding it so that its
// band indices can be resolved against the item's band list.
//
// Items are not safe for concurrent mutation; callers sharing one item across
// goroutines must synchronize access to its asset mapping.
package eo
