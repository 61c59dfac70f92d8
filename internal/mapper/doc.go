// Package mapper holds the strategies that bind a control to its
// observations and flatten the result for persistence.
//
// Store.Mapper picks a strategy from the control kind, first match wins:
//
//	multiSelect                      ObsList
//	type section                     Section
//	type table                       Table
//	obsGroupControl with abnormal    AbnormalObsGroup
//	obsGroupControl                  ObsGroup
//	anything else                    Obs
//
// Strategies never fail. A bound value of the wrong shape is returned
// unchanged.
package mapper
