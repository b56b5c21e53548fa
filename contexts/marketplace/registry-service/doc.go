// Package registryservice contains the marketplace registry: sellers list
// data items for sale, purchasers register and record purchases.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package registryservice
