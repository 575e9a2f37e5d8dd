// Package proxy implements proxy execution mode for hosts that cannot
// receive tools/list_changed notifications, such as a stateless handler that
// is started fresh for every request.
//
// Such a host only ever sees a fixed tool list: the discovery meta-tools
// plus execute_tool, a generic executor that takes any registered operation
// name and its arguments.
//
// # Enablement is advisory in this mode
//
// execute_tool calls Registry.InvokeDirect and deliberately skips the
// category enablement check. Category state is still reported by
// list_categories and search_tools so the caller can use it to organise its
// own work, but it is not enforced. This is an explicit downgrade, not a bug:
// enforcing enablement here would leave a stateless host no way to reach the
// hundreds of registered operations through its handful of fixed entry
// points.
package proxy
