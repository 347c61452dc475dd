// See attribute.go for the Attribute[T] descriptor and map.go for the Map
// that stores values against those descriptors. Package-level attributes
// such as Size, Hits, Cost and Timestamp are declared once here and shared
// by pointer identity across every store and policy that needs them.
package attribute
