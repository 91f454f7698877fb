// Package proxy implements deferred-loading proxy classes. A Class stands
// in for a target type named by a qualified string; nothing is imported
// until the first instance is constructed, at which point the class
// resolves its target once and caches it in place. Instances forward
// attribute reads, method calls, and container item access to the held
// value through an explicit surface, while attribute writes stay on the
// proxy itself. Classes are obtained through a Factory backed by a
// process-lifetime registry, so repeated lookups of one logical target are
// reference-identical and type-identity checks stay consistent.
package proxy
